package debugui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/ooftn2d/ecs"
	"github.com/plus3/ooftn2d/render"
)

// EntityRow is one line of the entity browser.
type EntityRow struct {
	Entity         ecs.Entity
	ArchetypeID    uint32
	ComponentTypes []string
	// Cached is a compact view of the pre-renderer caches: T (transform),
	// V (vertex buffer) and I (index buffer), '-' when missing.
	Cached string
}

const (
	columnEntity = iota
	columnArchetype
	columnComponents
	columnCached
)

// EntityBrowser lists every live entity with its components and
// pre-renderer cache state.
type EntityBrowser struct {
	rows               []EntityRow
	lastEntityCount    int
	lastArchetypeCount int

	selected      ecs.Entity
	filterText    string
	perPage       int
	page          int
	sortColumn    int
	sortAscending bool
}

func NewEntityBrowser(perPage int) *EntityBrowser {
	return &EntityBrowser{
		perPage:         perPage,
		sortAscending:   true,
		lastEntityCount: -1,
	}
}

// Selected returns the entity picked in the table, or 0.
func (eb *EntityBrowser) Selected() ecs.Entity {
	return eb.selected
}

func (eb *EntityBrowser) Render(storage *ecs.Storage, pre *render.PreRenderer) {
	if !imgui.BeginV("Entity Browser", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	eb.refresh(storage, pre)

	imgui.InputTextWithHint("##search", "Search...", &eb.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		eb.filterText = ""
	}

	filtered := FilterEntityRows(eb.rows, eb.filterText)

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("EntityTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Entity")
		imgui.TableSetupColumn("Archetype")
		imgui.TableSetupColumn("Components")
		imgui.TableSetupColumn("Cached")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			eb.sortColumn = int(spec.ColumnIndex())
			eb.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			SortEntityRows(eb.rows, eb.sortColumn, eb.sortAscending)
			sortSpecs.SetSpecsDirty(false)
		}

		start := min(eb.page*eb.perPage, len(filtered))
		end := min(start+eb.perPage, len(filtered))
		for _, row := range filtered[start:end] {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			if imgui.SelectableBoolV(row.Entity.String(), eb.selected == row.Entity, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				eb.selected = row.Entity
			}

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("0x%X", row.ArchetypeID))

			imgui.TableNextColumn()
			imgui.Text(strings.Join(row.ComponentTypes, ", "))

			imgui.TableNextColumn()
			imgui.Text(row.Cached)
		}

		imgui.EndTable()
	}

	if len(filtered) > eb.perPage {
		totalPages := (len(filtered) + eb.perPage - 1) / eb.perPage
		imgui.Text(fmt.Sprintf("Page %d / %d (%d entities)", eb.page+1, totalPages, len(filtered)))
		imgui.SameLine()
		if imgui.Button("Prev") && eb.page > 0 {
			eb.page--
		}
		imgui.SameLine()
		if imgui.Button("Next") && eb.page < totalPages-1 {
			eb.page++
		}
	} else {
		eb.page = 0
		imgui.Text(fmt.Sprintf("Total: %d entities", len(filtered)))
	}

	imgui.End()
}

// refresh rebuilds the rows whenever entities or archetypes were added or
// removed. Cache flags are refreshed every frame.
func (eb *EntityBrowser) refresh(storage *ecs.Storage, pre *render.PreRenderer) {
	if storage.EntityCount() != eb.lastEntityCount || len(storage.Archetypes()) != eb.lastArchetypeCount {
		eb.rows = CollectEntityRows(storage)
		SortEntityRows(eb.rows, eb.sortColumn, eb.sortAscending)
		eb.lastEntityCount = storage.EntityCount()
		eb.lastArchetypeCount = len(storage.Archetypes())
	}
	for i := range eb.rows {
		eb.rows[i].Cached = cacheFlags(pre, eb.rows[i].Entity)
	}
}

func cacheFlags(pre *render.PreRenderer, e ecs.Entity) string {
	if pre == nil {
		return ""
	}
	flags := []byte("---")
	if pre.HasTransform(e) {
		flags[0] = 'T'
	}
	if pre.HasVertexBuffer(e) {
		flags[1] = 'V'
	}
	if pre.HasIndexBuffer(e) {
		flags[2] = 'I'
	}
	return string(flags)
}

// CollectEntityRows lists every live entity in storage iteration order.
func CollectEntityRows(storage *ecs.Storage) []EntityRow {
	rows := make([]EntityRow, 0, storage.EntityCount())
	for _, archetype := range storage.Archetypes() {
		componentTypes := make([]string, len(archetype.Types()))
		for i, t := range archetype.Types() {
			componentTypes[i] = t.String()
		}
		for _, e := range archetype.Iter() {
			rows = append(rows, EntityRow{
				Entity:         e,
				ArchetypeID:    archetype.ID(),
				ComponentTypes: componentTypes,
			})
		}
	}
	return rows
}

// SortEntityRows sorts rows in place by the given table column.
func SortEntityRows(rows []EntityRow, column int, ascending bool) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if !ascending {
			a, b = b, a
		}

		switch column {
		case columnArchetype:
			return a.ArchetypeID < b.ArchetypeID
		case columnComponents:
			return strings.Join(a.ComponentTypes, ",") < strings.Join(b.ComponentTypes, ",")
		case columnCached:
			return a.Cached < b.Cached
		}
		return a.Entity < b.Entity
	})
}

// FilterEntityRows keeps rows whose entity, archetype id or component
// names contain text, ignoring case.
func FilterEntityRows(rows []EntityRow, text string) []EntityRow {
	if text == "" {
		return rows
	}

	needle := strings.ToLower(text)
	filtered := make([]EntityRow, 0, len(rows))
	for _, row := range rows {
		if strings.Contains(row.Entity.String(), needle) ||
			strings.Contains(fmt.Sprintf("0x%x", row.ArchetypeID), needle) ||
			strings.Contains(strings.ToLower(strings.Join(row.ComponentTypes, " ")), needle) {
			filtered = append(filtered, row)
		}
	}
	return filtered
}
