// Package plugin runs user Lua scripts on recorder transitions.
//
// A hook script defines a global on_transition function that receives one
// table per state change:
//
//	function on_transition(t)
//	    if t.to == "locked" then
//	        print("hands-free recording " .. t.session)
//	    end
//	end
//
// The table carries session, from, to, x, y, distance and time (unix
// milliseconds). State names have no payload; distance holds the
// displacement of cancelling and locking states.
//
// Scripts run in a sandbox: only the base, table, string and math libraries
// are opened and dofile, loadfile, load and loadstring are removed. Each
// call is bounded by a timeout. Script errors are counted and reported to
// the error callback but never reach the recorder.
//
//	hook, err := plugin.NewHook("hooks.lua")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer hook.Close()
//	ctrl.AddListener(hook)
package plugin
