package models

// IconKind is the persisted discriminator of an Icon.
type IconKind string

const (
	IconKindSymbol IconKind = "icon"
	IconKindImage  IconKind = "image"
)

// Icon is the cosmetic badge of a counter: either a SymbolIcon or an ImageIcon.
type Icon interface {
	Kind() IconKind
	// Value is the symbol reference or the image URL.
	Value() string
}

// SymbolIcon references an icon from the symbolic icon set (e.g. "fa-solid fa-droplet").
type SymbolIcon struct {
	Ref string
}

func (i SymbolIcon) Kind() IconKind { return IconKindSymbol }
func (i SymbolIcon) Value() string  { return i.Ref }

// ImageIcon holds an embedded image payload, usually a data: URL.
type ImageIcon struct {
	URL string
}

func (i ImageIcon) Kind() IconKind { return IconKindImage }
func (i ImageIcon) Value() string  { return i.URL }

// NewIcon rebuilds an Icon from its persisted kind and value.
// Unknown or empty kinds fall back to a symbol icon; an empty value yields nil.
func NewIcon(kind IconKind, value string) Icon {
	if value == "" {
		return nil
	}
	if kind == IconKindImage {
		return ImageIcon{URL: value}
	}
	return SymbolIcon{Ref: value}
}

// SplitIcon returns the persisted form of icon. A nil icon yields empty strings.
func SplitIcon(icon Icon) (IconKind, string) {
	if icon == nil {
		return "", ""
	}
	return icon.Kind(), icon.Value()
}
