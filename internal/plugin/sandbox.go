package plugin

import (
	"strings"

	lua "github.com/yuin/gopher-lua"
)

// newSandboxedState creates a Lua state with only safe libraries opened.
func newSandboxedState(output func(string)) *lua.LState {
	L := lua.NewState(lua.Options{
		SkipOpenLibs: true, // We'll open selectively
	})

	// Open base library (print, type, pairs, ipairs, etc.)
	lua.OpenBase(L)

	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	// Not opened: io, os, debug, package.

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require"} {
		L.SetGlobal(name, lua.LNil)
	}

	if output != nil {
		L.SetGlobal("print", L.NewFunction(func(L *lua.LState) int {
			n := L.GetTop()
			parts := make([]string, 0, n)
			for i := 1; i <= n; i++ {
				parts = append(parts, L.ToStringMeta(L.Get(i)).String())
			}
			output(strings.Join(parts, "\t"))
			return 0
		}))
	}

	return L
}
