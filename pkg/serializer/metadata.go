package serializer

import (
	"reflect"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

const (
	tagName     = "serializer"
	tagRequired = "required"
)

type fieldInfo struct {
	name     string
	required bool
}

type typeInfo struct {
	fields []fieldInfo
}

var typeCache *lru.Cache[reflect.Type, *typeInfo]

func init() {
	c, err := lru.New[reflect.Type, *typeInfo](256)
	if err != nil {
		panic("serializer: " + err.Error())
	}
	typeCache = c
}

// describe returns the JSON field layout of a struct type. Only top-level
// exported fields are considered.
func describe(t reflect.Type) *typeInfo {
	if info, ok := typeCache.Get(t); ok {
		return info
	}

	info := &typeInfo{}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name := jsonName(f)
		if name == "" {
			continue
		}
		info.fields = append(info.fields, fieldInfo{
			name:     name,
			required: hasOption(f.Tag.Get(tagName), tagRequired),
		})
	}

	typeCache.Add(t, info)
	return info
}

func jsonName(f reflect.StructField) string {
	tag := f.Tag.Get("json")
	if tag == "-" {
		return ""
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "" {
		return f.Name
	}
	return name
}

func hasOption(tag, option string) bool {
	for _, part := range strings.Split(tag, ",") {
		if strings.TrimSpace(part) == option {
			return true
		}
	}
	return false
}
