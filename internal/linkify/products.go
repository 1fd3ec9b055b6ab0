package linkify

// ProductTable maps canonical product names to their destination URLs.
// Read-only at runtime; the auto-linker is its only consumer.
type ProductTable map[string]string

// DefaultProducts lists the known L'Oréal products the assistant can
// recommend. Where an exact product page is not known, the URL falls
// back to a Google site search, which reliably returns official pages.
func DefaultProducts() ProductTable {
	return ProductTable{
		"Revitalift Filler":                "https://www.google.com/search?q=site:lorealparis.com+Revitalift+Filler",
		"Revitalift Hyaluronic Acid Serum": "https://www.google.com/search?q=site:lorealparis.com+Revitalift+Hyaluronic+Acid+Serum",
		"Solar Expertise SPF50":            "https://www.google.com/search?q=site:lorealparis.com+Solar+Expertise+SPF50",
		"Elvive Dream Lengths":             "https://www.google.com/search?q=site:lorealparis.com+Elvive+Dream+Lengths",
		"Elnett Satin Hairspray":           "https://www.google.com/search?q=site:lorealparis.com+Elnett+Satin+Hairspray",
	}
}
