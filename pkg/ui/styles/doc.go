// Package styles holds the lipgloss styles used by realmctl's terminal
// output. Styles are looked up by semantic name ("Error", "Success",
// "FilePath") and defined in the embedded styles.yaml.
//
// Colors are adaptive and the color profile is reduced to plain ASCII when
// stdout is not a terminal or NO_COLOR is set.
package styles
