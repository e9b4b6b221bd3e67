// Package factory provides a small generic registry used to instantiate
// modules from configuration. Modules are selected by a type name and
// configured from a map of raw settings which builders decode into typed
// structs.
//
// Example usage:
//
//	reg := factory.NewRegistry[io.Reader]()
//	reg.Register("file", func(conf map[string]any) (io.Reader, error) {
//	    var c struct{ Path string `json:"path"` }
//	    if err := factory.Decode(conf, &c); err != nil {
//	        return nil, err
//	    }
//	    return os.Open(c.Path)
//	})
//	r, err := reg.Create("file", map[string]any{"path": "foo"})
package factory
