package config

// SubscriptionsFile is the document listing feeds to import, read from YAML at startup
// or posted to the import endpoint.
type SubscriptionsFile struct {
	Feeds []Subscription `yaml:"feeds" json:"feeds"`
}

type Subscription struct {
	URL      string `yaml:"url" json:"url"`
	Category string `yaml:"category" json:"category"`
}
