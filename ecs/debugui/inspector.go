package debugui

import (
	"fmt"
	"reflect"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/ooftn2d/ecs"
)

// dirtyMarker is implemented by components whose edits must be flagged so
// that the pre-renderer re-uploads them, like graphics.Transform.
type dirtyMarker interface {
	MarkDirty()
}

// Inspector shows and edits the components of one entity.
type Inspector struct{}

func NewInspector() *Inspector {
	return &Inspector{}
}

func (ci *Inspector) Render(storage *ecs.Storage, e ecs.Entity) {
	if !imgui.BeginV("Component Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}
	defer imgui.End()

	if e == 0 {
		imgui.Text("No entity selected")
		return
	}

	archetype := storage.GetArchetype(e)
	if archetype == nil {
		imgui.Text(fmt.Sprintf("Entity %s is gone", e))
		return
	}

	imgui.Text(fmt.Sprintf("Entity: %s", e))
	imgui.Text(fmt.Sprintf("Archetype: 0x%X", archetype.ID()))
	imgui.Separator()

	for _, compType := range archetype.Types() {
		component := storage.GetComponent(e, compType)
		if component == nil {
			continue
		}

		if imgui.TreeNodeStr(compType.String()) {
			val := reflect.ValueOf(component).Elem()
			for _, field := range globalReflectionCache.Fields(compType) {
				ci.renderField(storage, e, compType, field, val.FieldByIndex(field.Index))
			}
			imgui.TreePop()
		}
	}
}

func (ci *Inspector) renderField(storage *ecs.Storage, e ecs.Entity, compType reflect.Type, field FieldInfo, val reflect.Value) {
	name := field.Name
	id := fmt.Sprintf("##%s%v", name, field.Index)

	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v := int32(val.Int())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(id, &v) {
			SetField(storage, e, compType, field.Index, int64(v))
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v := int32(val.Uint())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(id, &v) && v >= 0 {
			SetField(storage, e, compType, field.Index, uint64(v))
		}

	case reflect.Float32, reflect.Float64:
		v := float32(val.Float())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputFloat(id, &v) {
			SetField(storage, e, compType, field.Index, float64(v))
		}

	case reflect.Bool:
		v := val.Bool()
		if imgui.Checkbox(name, &v) {
			SetField(storage, e, compType, field.Index, v)
		}

	case reflect.String:
		v := val.String()
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(200)
		if imgui.InputTextWithHint(id, "", &v, imgui.InputTextFlagsNone, nil) {
			SetField(storage, e, compType, field.Index, v)
		}

	case reflect.Struct:
		if imgui.TreeNodeStr(name) {
			for _, nested := range globalReflectionCache.Nested(field) {
				ci.renderField(storage, e, compType, nested, val.FieldByIndex(nested.Index[len(field.Index):]))
			}
			imgui.TreePop()
		}

	case reflect.Slice, reflect.Array:
		imgui.Text(fmt.Sprintf("%s: [%d items]", name, val.Len()))

	case reflect.Map:
		imgui.Text(fmt.Sprintf("%s: map[%d items]", name, val.Len()))

	default:
		imgui.Text(fmt.Sprintf("%s: %v", name, val.Interface()))
	}
}

// SetField writes value into the field at index path of e's component of
// type compType, converting between numeric kinds. Components with a
// MarkDirty method are marked dirty. It reports whether the field was set.
func SetField(storage *ecs.Storage, e ecs.Entity, compType reflect.Type, index []int, value any) bool {
	component := storage.GetComponent(e, compType)
	if component == nil {
		return false
	}

	field := reflect.ValueOf(component).Elem().FieldByIndex(index)
	if !field.CanSet() {
		return false
	}

	switch v := value.(type) {
	case int64:
		switch field.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			field.SetInt(v)
		default:
			return false
		}
	case uint64:
		switch field.Kind() {
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			field.SetUint(v)
		default:
			return false
		}
	case float64:
		if field.Kind() != reflect.Float32 && field.Kind() != reflect.Float64 {
			return false
		}
		field.SetFloat(v)
	case bool:
		if field.Kind() != reflect.Bool {
			return false
		}
		field.SetBool(v)
	case string:
		if field.Kind() != reflect.String {
			return false
		}
		field.SetString(v)
	default:
		return false
	}

	if marker, ok := component.(dirtyMarker); ok {
		marker.MarkDirty()
	}
	return true
}
