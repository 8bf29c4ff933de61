// Package jsonfile reads content datasets from JSON files in a data directory.
//
// Each domain lives in <data_dir>/<type>.json as a JSON array of records,
// for example news.json or regulations.json. Files are read on every
// ListAll call; callers cache results above this layer. A Watcher reports
// when a dataset file changes so those caches can be invalidated.
package jsonfile
