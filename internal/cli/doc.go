// Package cli implements the picnezha command-line interface.
//
//	picnezha render   - Render the status image once, to a file or stdout
//	picnezha serve    - Serve the current status image over HTTP
//	picnezha version  - Print build information
//
// Both render and serve resolve config the same way: picnezha.yaml (from
// --config, the working directory, or ~/.config/picnezha/config.yaml), then
// the environment (API_URL, USERNAME, PASSWORD, TEXT, SERVERS_PER_ROW, PORT,
// FONT_PATH, EMOJI_FONT_PATH), then command-line flags. The merged config is
// validated before anything is fetched.
//
// Errors are printed by Execute. Config errors exit with status 2, anything
// else with 1.
package cli
