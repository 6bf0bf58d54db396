// Package models contains GORM persistence models for the storefront tables.
// The domain packages stay free of ORM tags; each model converts to and from
// its aggregate with ToDomain and FromDomain.
//
// Tables:
// - users: customers, sub-admins and their cart snapshot
// - products: the catalog
// - orders, order_items: placed orders and their line snapshots
// - mini_stores, mini_store_products: vendor storefronts and their curation
// - newsletter_subscribers
package models
