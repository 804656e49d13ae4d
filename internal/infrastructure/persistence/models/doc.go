// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer pure and free
// from ORM concerns.
//
// Key Principles:
// 1. Domain entities carry no GORM tags
// 2. Persistence models contain all GORM annotations and table mappings
// 3. ToDomain/FromDomain convert between the two
// 4. Repositories read and write persistence models only
//
// Structure:
// - base.go: audit columns shared by every table
// - catalog.go: brands, categories, sub-categories, models, units, products, lookups
// - partner.go: companies, stores, locations, customer contacts
// - purchasing.go: purchase prices
// - identity.go: users, roles, permissions and their join tables
package models
