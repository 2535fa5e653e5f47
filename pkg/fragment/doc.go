// Package fragment fetches and dissects page fragments.
//
// A page fragment is an HTML file (pages/<id>.html) holding an optional
// stylesheet link, an optional script, and a content container with class
// settings-container or mods-container. Sources retrieve the raw bytes
// from an fs.FS, an HTTP origin or an S3 bucket; Parse extracts the three
// parts; NormalizeStylesheet and NormalizeScript turn fragment-relative
// references into document-relative ones.
package fragment
