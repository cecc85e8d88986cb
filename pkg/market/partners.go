package market

import (
	"souk/pkg/core"
	"souk/pkg/store"
)

// Early releases stored partner types as Arabic display labels. Reads
// normalize them to the canonical identifiers and write the collection
// back once, so the legacy encoding disappears on first contact.
var legacyPartnerTypes = map[string]core.PartnerType{
	"تاجر تجزئة": core.PartnerRetailer,
	"مورد":       core.PartnerSupplier,
	"شركة شحن":   core.PartnerShipping,
}

// Partners holds a supplier's business contacts.
type Partners struct {
	*store.Collection[*core.Partner]
}

// NewPartners creates the partners repository.
func NewPartners(d Deps) *Partners {
	return &Partners{store.New(store.Config[*core.Partner]{
		Key:     core.KeyPartners,
		Backend: d.Backend,
		Bus:     d.Bus,
		Logger:  d.Logger,
		Now:     d.Now,
		NewID:   d.NewID,
		Migrate: func(p *core.Partner) bool {
			canonical, ok := legacyPartnerTypes[string(p.Type)]
			if !ok {
				return false
			}
			p.Type = canonical
			return true
		},
	})}
}
