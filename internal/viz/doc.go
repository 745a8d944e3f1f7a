// Package viz holds the presentation pieces shared by the terminal and
// window frontends.
//
//   - [Theme]: color schemes, five built in
//   - [Layout]: maps screen coordinates to grid cells for click handling
//   - [Canvas]: Braille-based pixel canvas for compact grid rendering
//   - [Sparkline], [Slider]: small inline widgets for the status lines
//
// Nothing here owns simulation state; every function takes the grid or the
// values it draws.
package viz
