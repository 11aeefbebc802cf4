package admin

import (
	"errors"
	"fmt"
)

// Validate checks that d is consistent:
//   - collection names and view paths are unique
//   - every collection has a view
//   - list views define a list action and change views a get action
//   - behaviors only name registered connectors
//   - watched fields exist in the same view
func Validate(d Descriptor) error {
	var errs []error
	names := map[string]bool{}
	paths := map[string]string{}

	for _, c := range d.Collections {
		if c.Name == "" {
			errs = append(errs, errors.New("collection without a name"))
		} else if names[c.Name] {
			errs = append(errs, fmt.Errorf("duplicate collection %q", c.Name))
		}
		names[c.Name] = true

		views := c.Views()
		if len(views) == 0 {
			errs = append(errs, fmt.Errorf("collection %q has no views", c.Name))
		}
		for _, nv := range views {
			where := c.Name + "." + nv.Kind
			v := nv.View
			if v.Path == "" {
				errs = append(errs, fmt.Errorf("%s: empty path", where))
			} else if other, ok := paths[v.Path]; ok {
				errs = append(errs, fmt.Errorf("%s: path %q already used by %s", where, v.Path, other))
			} else {
				paths[v.Path] = where
			}

			switch {
			case nv.Kind == "list" && v.Actions.List == nil:
				errs = append(errs, fmt.Errorf("%s: no list action", where))
			case nv.Kind == "change" && v.Actions.Get == nil:
				errs = append(errs, fmt.Errorf("%s: no get action", where))
			case nv.Kind == "add" && v.Actions.Add == nil:
				errs = append(errs, fmt.Errorf("%s: no add action", where))
			}

			errs = append(errs, validateFields(d, where, v)...)
		}
	}
	return errors.Join(errs...)
}

func validateFields(d Descriptor, where string, v *View) []error {
	var errs []error
	fields := v.Fields
	if v.Filters != nil {
		fields = append(fields[:len(fields):len(fields)], v.Filters.Fields...)
	}
	for _, f := range fields {
		for _, b := range f.Behaviors {
			if w, ok := b.(Watcher); ok {
				if _, found := v.Field(w.Watches()); !found {
					errs = append(errs, fmt.Errorf("%s: field %q watches unknown field %q", where, f.Name, w.Watches()))
				}
			}
			if u, ok := b.(ConnectorUser); ok {
				for _, name := range u.ConnectorNames() {
					if _, err := d.Connectors.Get(name); err != nil {
						errs = append(errs, fmt.Errorf("%s: field %q: %w", where, f.Name, err))
					}
				}
			}
		}
	}
	return errs
}
