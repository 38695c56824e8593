// Package memory provides typed object pooling. Snapshot and journal
// writers draw their encode buffers from here.
package memory
