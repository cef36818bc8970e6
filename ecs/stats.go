package ecs

// StorageStats is a point-in-time summary of a Storage.
type StorageStats struct {
	ArchetypeCount     int
	TotalEntityCount   int
	SingletonCount     int
	ArchetypeBreakdown []ArchetypeStats
	SingletonTypes     []string
}

// ArchetypeStats describes a single archetype.
type ArchetypeStats struct {
	ID             uint32
	ComponentTypes []string
	EntityCount    int
}

// CollectStats walks the storage and summarizes archetypes and singletons.
// Archetypes are reported in creation order.
func (s *Storage) CollectStats() StorageStats {
	stats := StorageStats{
		ArchetypeCount:     len(s.archetypeList),
		TotalEntityCount:   s.EntityCount(),
		SingletonCount:     len(s.singletonOrder),
		ArchetypeBreakdown: make([]ArchetypeStats, 0, len(s.archetypeList)),
		SingletonTypes:     make([]string, 0, len(s.singletonOrder)),
	}

	for _, archetype := range s.archetypeList {
		names := make([]string, len(archetype.types))
		for i, typ := range archetype.types {
			names[i] = typ.String()
		}
		stats.ArchetypeBreakdown = append(stats.ArchetypeBreakdown, ArchetypeStats{
			ID:             archetype.id,
			ComponentTypes: names,
			EntityCount:    archetype.Len(),
		})
	}

	for _, typ := range s.singletonOrder {
		stats.SingletonTypes = append(stats.SingletonTypes, typ.String())
	}

	return stats
}
