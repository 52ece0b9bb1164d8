// Package interactions derives view events from raw behaviour logs and
// imports them into the interaction datasets. Video views recover the item
// id from the player URL; news views carry the content id directly.
package interactions
