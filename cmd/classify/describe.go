package main

import (
	"github.com/woozymasta/coordmap/internal/classifier"
	"github.com/woozymasta/coordmap/internal/geo"
)

// embedDescriptions forces every marker description into the feature properties.
// Layers are in the same order as the group, features in marker order.
func embedDescriptions(group *classifier.MarkerGroup, layers []geo.NamedCollection) error {
	for _, layer := range layers {
		markers := group.Markers(layer.Name)
		for i, m := range markers {
			desc, err := m.Description()
			if err != nil {
				return err
			}
			layer.Collection.Features[i].Properties["description"] = desc
		}
	}
	return nil
}
