// Package mapmodel implements the layered map model the terrain engine
// attaches to: an ordered, identity-stable collection of image, elevation
// and model layers plus spatial-reference metadata.
//
// The map is mutable at runtime. Every mutation that goes through the Map
// (layer add/remove, and layer property setters once a layer is owned by a
// map) emits exactly one Change to each active subscription, synchronously
// and in mutation order. Subscriptions are explicit handles; cancel them
// deterministically with [Subscription.Cancel].
package mapmodel
