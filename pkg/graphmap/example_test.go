package graphmap_test

import (
	"context"
	"fmt"

	"github.com/lycosa9527/mindgraph/pkg/config"
	"github.com/lycosa9527/mindgraph/pkg/graphmap"
)

func ExampleEngine_Enhance() {
	engine := graphmap.New(config.Default().Graph)

	// A clean concept-map spec with the topic linked to every concept
	spec := graphmap.Spec{
		Topic:    "Water Cycle",
		Concepts: []string{"Evaporation", "Condensation", "Precipitation"},
		Relationships: []graphmap.Relationship{
			{From: "Water Cycle", To: "Evaporation", Label: "starts with"},
			{From: "Evaporation", To: "Condensation", Label: "leads to"},
			{From: "Condensation", To: "Precipitation", Label: "causes"},
		},
	}

	enhanced, err := engine.Enhance(context.Background(), spec, graphmap.Options{})
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	fmt.Println("Algorithm:", enhanced.Layout.Algorithm)
	fmt.Println("Positions:", len(enhanced.Layout.Positions))
	fmt.Println("Warnings:", len(enhanced.Warnings))
	// Output:
	// Algorithm: layered
	// Positions: 4
	// Warnings: 0
}

func ExampleEngine_Enhance_repairs() {
	engine := graphmap.New(config.Default().Graph)

	// Malformed input: a duplicate concept and a self loop. Both are
	// repaired rather than rejected, with one warning per fix.
	spec := graphmap.Spec{
		Topic:    "Photosynthesis",
		Concepts: []string{"Sunlight", "sunlight", "Chlorophyll"},
		Relationships: []graphmap.Relationship{
			{From: "Sunlight", To: "Sunlight", Label: "is"},
			{From: "Photosynthesis", To: "Chlorophyll", Label: "uses"},
		},
	}

	enhanced, err := engine.Enhance(context.Background(), spec, graphmap.Options{})
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	fmt.Println("Concepts:", len(enhanced.Concepts))
	fmt.Println("Relationships:", len(enhanced.Relationships))
	for _, w := range enhanced.Warnings {
		fmt.Println("Repair:", w.Code)
	}
	// Output:
	// Concepts: 2
	// Relationships: 1
	// Repair: duplicate_node
	// Repair: self_loop
}

func ExampleEngine_Enhance_sector() {
	engine := graphmap.New(config.Default().Graph)

	// An explicit key grouping selects the sector strategy by default.
	spec := graphmap.Spec{
		Topic:    "Ecosystems",
		Concepts: []string{"Producers", "Consumers", "Plants", "Herbivores"},
		Keys:     []string{"Producers", "Consumers"},
		KeyParts: map[string][]string{
			"Producers": {"Plants"},
			"Consumers": {"Herbivores"},
		},
	}

	enhanced, err := engine.Enhance(context.Background(), spec, graphmap.Options{})
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	fmt.Println("Algorithm:", enhanced.Layout.Algorithm)
	fmt.Println("Keys:", enhanced.Layout.Keys)
	// Output:
	// Algorithm: sector
	// Keys: [Producers Consumers]
}
