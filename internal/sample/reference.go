package sample

import (
	"embed"
	"encoding/json"
	"fmt"
	"sync"
)

//go:embed data/merchants.json
var dataFiles embed.FS

// Reference holds the merchant and subscription catalog the generator
// draws from
type Reference struct {
	Categories    []Category     `json:"categories"`
	Subscriptions []Subscription `json:"subscriptions"`
	ATMNetworks   []ATMNetwork   `json:"atm_networks"`

	categoryWeights []int
}

// Category groups merchants that share a spend profile
type Category struct {
	Name     string  `json:"name"`
	Weight   int     `json:"weight"`
	Channel  string  `json:"channel"`
	Profile  string  `json:"profile"`
	IntlRate float64 `json:"intl_rate"`

	Merchants []Merchant `json:"merchants"`
}

// Merchant is one named merchant with a stable identifier.
// Stable IDs matter: loyalty and diversity metrics key on them, so a
// fresh ID per transaction would make every visit look like a new
// merchant.
type Merchant struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	City string `json:"city"`
}

// Subscription is a recurring charge with a fixed monthly amount
type Subscription struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// ATMNetwork names a cash advance location
type ATMNetwork struct {
	Name string `json:"name"`
	City string `json:"city"`
}

var (
	instance *Reference
	once     sync.Once
	loadErr  error
)

// LoadReference loads the embedded catalog.
// Thread-safe; parses only once.
func LoadReference() (*Reference, error) {
	once.Do(func() {
		instance = &Reference{}
		loadErr = instance.load()
	})

	if loadErr != nil {
		return nil, loadErr
	}
	return instance, nil
}

func (r *Reference) load() error {
	data, err := dataFiles.ReadFile("data/merchants.json")
	if err != nil {
		return fmt.Errorf("failed to read merchants.json: %w", err)
	}
	if err := json.Unmarshal(data, r); err != nil {
		return fmt.Errorf("failed to parse merchants.json: %w", err)
	}

	if len(r.Categories) == 0 {
		return fmt.Errorf("merchants.json has no categories")
	}
	for _, c := range r.Categories {
		if len(c.Merchants) == 0 {
			return fmt.Errorf("category %s has no merchants", c.Name)
		}
		if _, ok := amountProfiles[c.Profile]; !ok {
			return fmt.Errorf("category %s names unknown profile %q", c.Name, c.Profile)
		}
	}

	r.categoryWeights = make([]int, len(r.Categories))
	for i, c := range r.Categories {
		r.categoryWeights[i] = c.Weight
	}

	return nil
}

// CategoryWeights returns the pick weights aligned with Categories
func (r *Reference) CategoryWeights() []int {
	return r.categoryWeights
}
