// Package factory provides a small generic registry used to build pluggable
// components from configuration. A component is described by a type string
// and a map of raw settings; the registered factory decodes the settings into
// a typed struct with Decode and returns the implementation.
//
//	reg := factory.NewRegistry[metrics.Sink]()
//	_ = reg.Register("log", func(conf map[string]any) (metrics.Sink, error) {
//	    var c struct{ Level string `json:"level"` }
//	    if err := factory.Decode(conf, &c); err != nil {
//	        return nil, err
//	    }
//	    return newLogSink(c.Level), nil
//	})
//	s, err := reg.Create(factory.ModuleConfig{Type: "log"})
package factory
