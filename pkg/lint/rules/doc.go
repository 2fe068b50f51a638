// Package rules provides the built-in accessibility rules for a11ylint.
//
// # Rules
//
// Markup rules inspect the element tree:
//
//   - A11Y001: img-alt - Images must have an alt attribute
//   - A11Y003: heading-order - Heading levels increase one step at a time
//   - A11Y004: accessible-name - Controls, buttons and links need a name
//   - A11Y005: link-href - Anchors need a real destination
//   - A11Y007: table-headers - Data tables need header cells
//   - A11Y008: aria-role - Roles must be valid and suit the element (fixable)
//   - A11Y009: html-lang - The html element declares a language (fixable)
//   - A11Y010: tabindex-positive - No positive tabindex
//   - A11Y011: duplicate-id - ids are unique
//   - A11Y012: landmark-main - Pages have exactly one main landmark
//
// Style rules inspect stylesheets, <style> elements and style attributes:
//
//   - A11Y002: focus-outline - Global styles must not hide focus
//   - A11Y006: color-contrast - Text meets WCAG contrast minimums
//
// Each rule also answers to the matching axe-core names (image-alt,
// button-name, landmark-one-main, ...) registered by RegisterAxeAliases.
//
// # Rule Packs
//
// Packs are configuration presets written by "a11ylint init --pack":
//
//   - recommended: every rule at its default severity
//   - strict: every rule as an error, decorative images must be marked
//   - legacy: only the checks that block assistive technology outright
//
// # Registration
//
// Rules are registered with the default registry via RegisterAll.
package rules
