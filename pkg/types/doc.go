// Package types contains the shared types used across storysync packages:
// the filesystem interface, content categories, provisioning modes, item
// health states, and operation result structs.
//
// Keeping these in one leaf package avoids import cycles between the
// provisioning engine, the health analyzer, and the command layer.
package types
