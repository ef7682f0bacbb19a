// Package domain defines the core vocabulary entities and their validation rules.
package domain
