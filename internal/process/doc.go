// Package process terminates the headless Chrome process tree started for
// PNG export. Chrome forks renderer and GPU helpers that survive a plain kill
// of the parent, so the whole group or tree is targeted.
package process
