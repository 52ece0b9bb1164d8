// Package content synchronizes the video and news catalogues into the
// recommendation item datasets.
//
// The upstream sources (the news CMS and the video platform) are pulled into
// a cache table by the Ingestor. From there the Service runs the bulk import
// path per domain, and the Stream delivers incremental changes through the
// real-time write API.
package content
