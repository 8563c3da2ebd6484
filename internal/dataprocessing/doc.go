// Package dataprocessing turns raw transparency-platform XML into flat,
// timezone-rendered rows.
//
// The pipeline runs in four stages: the decoder dispatches on the document
// root and produces one normalized Publication regardless of schema
// variant; the extractor walks the series/period/point structure in
// document order; the reconstructor derives each point's absolute instant
// from the period start, the 1-based position and the period resolution;
// and the normalizer flattens everything into domain.Row values with local
// date/time display strings.
//
// The whole pipeline is a pure, one-shot transformation: one call, one
// input document, one row slice. A Processor holds only immutable
// configuration and is safe for concurrent use across documents.
package dataprocessing
