// Package schema provides the warehouse models for crtbox.
// The warehouse mirrors the enriched sales table into PostgreSQL so
// external BI tools can query it without the SQLite source file.
package schema

import (
	"time"
)

// SalesFact is one enriched sales row: a sales line joined with its
// product and route supervisor, plus the derived crates-per-box
// ratio. Pointer fields mirror the NULLs produced by the left joins.
type SalesFact struct {
	// ID is the surrogate primary key.
	ID uint `gorm:"primaryKey"`

	// Dataset names the source registry entry the row came from.
	Dataset string `gorm:"type:varchar(50);not null;index"`

	// Code is the product code from the sales line.
	Code string `gorm:"type:varchar(50);not null"`

	// SalesDate is the calendar date of the sale.
	SalesDate time.Time `gorm:"type:date;not null;index"`

	// Qty is the sold quantity.
	Qty float64 `gorm:"not null"`

	// Route is the distribution route of the sales line.
	Route string `gorm:"type:varchar(100);not null;index"`

	// Description is the product description, NULL for unmatched codes.
	Description *string `gorm:"type:varchar(255)"`

	// Cake is the number of units per cake.
	Cake *float64

	// CratesBox is the crates-per-box attribute of the product.
	CratesBox *float64

	// CrtBox is the derived ratio Qty / Cake, NULL when Cake is
	// NULL or zero.
	CrtBox *float64

	// Supervisor of the route, NULL for routes without one.
	Supervisor *string `gorm:"type:varchar(100)"`
}

// Publication records one publish run per dataset. A re-publish of
// the same dataset replaces the record.
type Publication struct {
	// ID is the surrogate primary key.
	ID uint `gorm:"primaryKey"`

	// Dataset names the source registry entry.
	Dataset string `gorm:"type:varchar(50);not null;uniqueIndex"`

	// RecordCount is the number of facts written.
	RecordCount int `gorm:"not null"`

	// DroppedCount is the number of source rows dropped because
	// their sales date could not be parsed.
	DroppedCount int `gorm:"not null"`

	// PublishedAt is when the publish run finished.
	PublishedAt time.Time `gorm:"not null"`
}
