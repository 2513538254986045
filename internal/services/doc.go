// Package services defines the error taxonomy shared by remote clients and
// the sync pipeline.
//
// Sentinel markers classify failures by how the orchestrator must react:
// authentication failures abort the run, transport failures degrade the
// calling feature, template failures fall back to the built-in layout, and
// transient per-item failures are counted and skipped.
package services
