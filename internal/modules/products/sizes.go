package products

// SizeDimension is a row of the size guide.
type SizeDimension struct {
	Size            string `json:"size"`
	Width           string `json:"width"`
	Height          string `json:"height"`
	Weight          string `json:"weight"`
	SuggestedHeight string `json:"suggestedHeight"`
}

// StandardSizes is the fixed size guide, smallest first.
var StandardSizes = []SizeDimension{
	{Size: "P", Width: "52 cm", Height: "70 cm", Weight: "55 - 70 kg", SuggestedHeight: "1.60 - 1.70 m"},
	{Size: "M", Width: "54 cm", Height: "72 cm", Weight: "70 - 80 kg", SuggestedHeight: "1.70 - 1.80 m"},
	{Size: "G", Width: "56 cm", Height: "74 cm", Weight: "80 - 90 kg", SuggestedHeight: "1.80 - 1.90 m"},
	{Size: "GG", Width: "58 cm", Height: "76 cm", Weight: "90 - 100 kg", SuggestedHeight: "1.90 - 2.00 m"},
	{Size: "XG", Width: "60 cm", Height: "78 cm", Weight: "100 - 110 kg", SuggestedHeight: "2.00 - 2.10 m"},
}

// LookupSize finds a standard size by label.
func LookupSize(label string) (SizeDimension, bool) {
	for _, s := range StandardSizes {
		if s.Size == label {
			return s, true
		}
	}
	return SizeDimension{}, false
}

// SizeAvailable applies the catalog rule: a product without a size list
// offers every standard size.
func (p Product) SizeAvailable(label string) bool {
	if _, ok := LookupSize(label); !ok {
		return false
	}
	if len(p.Sizes) == 0 {
		return true
	}
	for _, s := range p.Sizes {
		if s == label {
			return true
		}
	}
	return false
}
