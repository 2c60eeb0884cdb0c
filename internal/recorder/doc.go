// Package recorder holds the state of the press-and-hold recorder control.
//
// A Controller receives the begin/move/end calls of the mouse handler,
// drives a gesture.Classifier for every press and reports each state change
// to its listeners as a Transition. Releasing the control sends the message
// (Stopped) unless the gesture was cancelled or locked. A locked session
// keeps recording hands-free until Stop is called.
//
//	ctrl, err := recorder.NewController(gesture.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	ctrl.AddListener(recorder.ListenerFunc(func(t recorder.Transition) {
//	    fmt.Println(t)
//	}))
//	handler := mouse.NewHandler(mouse.DefaultConfig(), ctrl)
package recorder
