//go:build !headertool_debug

package cli

const debugBuild = false
