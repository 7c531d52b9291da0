// Package calculation serves fee quotes for catalog categories.
//
// It wraps feecalc.Calculator for request-scoped use and caches quotes by
// category and base value. Cache failures never fail a calculation.
package calculation
