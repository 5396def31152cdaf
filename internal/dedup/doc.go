// Package dedup detects duplicate contacts and picks the record to keep.
//
// # Overview
//
// Given the flat record collection produced by a loader, the grouper
// partitions it into disjoint duplicate groups and the selector picks a
// single deterministic keeper per group. Both are pure functions over
// immutable snapshots; nothing here touches the network or the
// filesystem.
//
// # Matching rules
//
// Two records are duplicates when any one rule matches:
//
//  1. Exact email: case-insensitive equality of at least one address.
//  2. Exact phone: equality of at least one normalized number (strip
//     everything but digits, keep a leading "+", fold "00" to "+").
//  3. Fuzzy name: the normalized Levenshtein ratio of the case-folded
//     display names reaches the configured threshold (0-100, default 85).
//
// An absent field never matches another absent field. Each rule can be
// disabled independently through Config.
//
// # Transitive grouping
//
// The pairwise relation is closed transitively with a union-find over
// record indices, so chains like A~B (email) and B~C (name) end up in
// one group and groups stay disjoint. Only groups with two or more
// members are reported; singletons are dropped.
//
// # Keeper selection
//
// SelectKeeper orders a group by completeness (count of populated
// notable fields), then by contact-method count, then by smallest ID.
// The order is total, so repeated runs on identical input pick the same
// keeper.
package dedup
