// Package tasks implements the playlist build pipeline.
//
// The core abstraction is [Engine], which orchestrates resolving parsed song
// requests against a music service and populating a newly created playlist.
// Operations emit progress updates via channels for non-blocking status
// reporting to the CLI layer.
//
// The pipeline is deliberately sequential: one search per request in input
// order, then fixed-size batch submissions, one at a time. A [rate.Limiter]
// paces search calls below the service's throttling threshold.
package tasks
