// Package store reads and writes documents by location: a local path, an
// http(s) URL, or s3://bucket/key.
package store
