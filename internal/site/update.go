package site

// ExtrasPatch is a field-level patch for Extras. Nil fields are left alone.
type ExtrasPatch struct {
	Animations    *bool `json:"animations,omitempty" yaml:"animations,omitempty"`
	Responsive    *bool `json:"responsive,omitempty" yaml:"responsive,omitempty"`
	Accessibility *bool `json:"accessibility,omitempty" yaml:"accessibility,omitempty"`
	SEO           *bool `json:"seo,omitempty" yaml:"seo,omitempty"`
}

// PartialUpdate names only the fields a command wants to change.
// A nil field means "no opinion". Unknown JSON keys are dropped on decode.
type PartialUpdate struct {
	SiteType       *string      `json:"siteType,omitempty" yaml:"siteType,omitempty"`
	BrandName      *string      `json:"brandName,omitempty" yaml:"brandName,omitempty"`
	Tagline        *string      `json:"tagline,omitempty" yaml:"tagline,omitempty"`
	Palette        *Palette     `json:"palette,omitempty" yaml:"palette,omitempty"`
	CustomSections *string      `json:"customSections,omitempty" yaml:"customSections,omitempty"`
	Extras         *ExtrasPatch `json:"extras,omitempty" yaml:"extras,omitempty"`
}

// IsEmpty reports whether the update carries no field at all.
func (u PartialUpdate) IsEmpty() bool {
	return u.SiteType == nil &&
		u.BrandName == nil &&
		u.Tagline == nil &&
		u.Palette == nil &&
		u.CustomSections == nil &&
		(u.Extras == nil || u.Extras.IsEmpty())
}

// IsEmpty reports whether the patch touches no flag.
func (p ExtrasPatch) IsEmpty() bool {
	return p.Animations == nil && p.Responsive == nil && p.Accessibility == nil && p.SEO == nil
}

// Merge layers next on top of u and returns the result. Scalar fields set in
// next replace those in u; extras patches are merged flag by flag.
func (u PartialUpdate) Merge(next PartialUpdate) PartialUpdate {
	out := u
	if next.SiteType != nil {
		out.SiteType = next.SiteType
	}
	if next.BrandName != nil {
		out.BrandName = next.BrandName
	}
	if next.Tagline != nil {
		out.Tagline = next.Tagline
	}
	if next.Palette != nil {
		out.Palette = next.Palette
	}
	if next.CustomSections != nil {
		out.CustomSections = next.CustomSections
	}
	if next.Extras != nil {
		var merged ExtrasPatch
		if u.Extras != nil {
			merged = *u.Extras
		}
		merged = merged.Merge(*next.Extras)
		out.Extras = &merged
	}
	return out
}

// Merge layers next on top of p.
func (p ExtrasPatch) Merge(next ExtrasPatch) ExtrasPatch {
	if next.Animations != nil {
		p.Animations = next.Animations
	}
	if next.Responsive != nil {
		p.Responsive = next.Responsive
	}
	if next.Accessibility != nil {
		p.Accessibility = next.Accessibility
	}
	if next.SEO != nil {
		p.SEO = next.SEO
	}
	return p
}

// ApplyTo returns base with every set flag of p overwritten.
func (p ExtrasPatch) ApplyTo(base Extras) Extras {
	if p.Animations != nil {
		base.Animations = *p.Animations
	}
	if p.Responsive != nil {
		base.Responsive = *p.Responsive
	}
	if p.Accessibility != nil {
		base.Accessibility = *p.Accessibility
	}
	if p.SEO != nil {
		base.SEO = *p.SEO
	}
	return base
}

// PatchOf returns a patch that sets every flag to the value it has in e.
func PatchOf(e Extras) ExtrasPatch {
	return ExtrasPatch{
		Animations:    Bool(e.Animations),
		Responsive:    Bool(e.Responsive),
		Accessibility: Bool(e.Accessibility),
		SEO:           Bool(e.SEO),
	}
}

// Apply returns a new Spec with update applied to base. It never fails and
// never mutates base. Palette values outside the catalog are ignored.
func Apply(base Spec, update PartialUpdate) Spec {
	next := base
	if update.SiteType != nil {
		next.SiteType = *update.SiteType
	}
	if update.BrandName != nil {
		next.BrandName = *update.BrandName
	}
	if update.Tagline != nil {
		next.Tagline = *update.Tagline
	}
	if update.Palette != nil && update.Palette.Valid() {
		next.Palette = *update.Palette
	}
	if update.CustomSections != nil {
		next.CustomSections = *update.CustomSections
	}
	if update.Extras != nil {
		next.Extras = update.Extras.ApplyTo(base.Extras)
	}
	return next
}

// String returns a pointer to v, for building updates.
func String(v string) *string { return &v }

// Bool returns a pointer to v, for building updates.
func Bool(v bool) *bool { return &v }

// PaletteRef returns a pointer to p, for building updates.
func PaletteRef(p Palette) *Palette { return &p }
