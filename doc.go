// Package souk is the Composition Root for the souk marketplace data layer.
//
// It connects the domain repositories with the storage adapters using the
// Hexagonal Architecture pattern.
//
// Philosophy:
//
// Souk is the data layer of a marketplace front end, rebuilt as an embeddable
// engine. Collections of JSON documents (products, partners, shipping orders,
// the shared market feed, supplier exhibitions) live behind a Backend port,
// change signals travel over an in-process event bus, and every delayed
// callback (toast expiry, scheduled notifications) belongs to an explicit
// scheduler so lifetimes are testable and cancellable.
//
// Features:
//
//   - **Hexagonal Architecture**: domain repositories isolated from persistence.
//   - **Pluggable Backends**: in-memory, one-JSON-file-per-collection, SQLite.
//   - **Event Bus**: synchronous publish/subscribe with queued nested publishes.
//   - **Cross-Process Sync**: filesystem profiles surface other processes'
//     writes as storage-updated signals, like the browser's cross-tab storage
//     event.
//   - **Notification Engine**: newest-first list, unread tracking, role-based
//     schedules and toast expiry on an injectable clock.
//
// Usage:
//
//	p, err := souk.Open("./profile",
//		souk.WithAdapter("fs"),
//		souk.WithLogger(logger),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer p.Close()
//
//	product, err := p.Repos.Products.Add(ctx, &souk.Product{Name: "X", Price: 10})
package souk
