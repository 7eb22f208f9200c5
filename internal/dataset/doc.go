// Package dataset loads the ecommerce purchases dataset into an immutable
// in-memory table. Loading happens once per path for the lifetime of the
// process; every computation downstream (filtering, aggregation, insights)
// reads the same shared table concurrently without locking.
//
// The purchase amount column is the only one that needs normalization: the
// source formats it as a currency string ("$1,234.50"). Normalization is
// idempotent and happens during the load, before any aggregation can read
// the column. A value that does not parse is nulled on its row and counted,
// never coerced to zero and never fatal to the load.
package dataset
