// Package overlook is a 2D geographic overlay viewer for [Ebitengine].
//
// Overlook renders collections of geographic data sources (building
// footprints, CZML overlays) on a flat projected map and keeps a small
// retained widget layer for on-screen UI. Its centerpiece is [LayerPanel],
// a checkbox list that mirrors a viewer's data-source collection and lets
// the user toggle each overlay's visibility.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	viewer := overlook.NewViewer()
//	// ... add data sources ...
//	panel, err := overlook.NewLayerPanel(viewer, overlook.PanelOptions{})
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer panel.Destroy()
//	overlook.Run(viewer, overlook.RunConfig{
//		Title: "My Map", Width: 960, Height: 640,
//	})
//
// For full control, implement ebiten.Game yourself and call
// [Viewer.Update] and [Viewer.Draw] directly.
//
// # Data sources
//
// A [DataSource] is anything with a visibility flag. Optional capabilities
// ([NamedSource], [LoadingSource], [ChangingSource], [FootprintSource]) are
// discovered by type assertion, so source types only implement what they
// have. [CustomDataSource] is a ready-made in-memory source;
// [CZMLDataSource] loads building overlays from CZML documents produced by
// the osm subpackage's Overpass fetcher.
//
// Sources live in the viewer's [DataSourceCollection], which raises
// SourceAdded/SourceRemoved events. The [LayerPanel] subscribes to those
// (and to per-source loading/changed events) and coalesces bursts of
// notifications into a single rebuild on the next frame tick.
//
// # Single-threaded model
//
// Like the underlying game loop, overlook is single-threaded and
// cooperative: events fire synchronously, nothing blocks, and the only
// deferred work is the panel's one-tick render coalescing via
// [Viewer.InvokeLater]. Network fetching (the osm subpackage) is the lone
// exception and takes a context.
//
// [Ebitengine]: https://ebitengine.org
package overlook
