package areas

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"medaid_backend/internals/features/cases/areas/model"
)

//go:embed data_areas.json
var defaultAreasJSON []byte

type areaSeed struct {
	AreaName string `json:"area_name"`
	District string `json:"district"`
	Class    string `json:"class"`
}

// LoadAreaTable reads the classification table from path, or the embedded
// default when path is empty.
func LoadAreaTable(path string) (model.AreaTable, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultAreaTable()
	}

	log.Println("📥 Loading area table:", path)
	raw, err := os.ReadFile(path)
	if err != nil {
		return model.AreaTable{}, fmt.Errorf("read area table: %w", err)
	}
	return ParseAreaTable(raw)
}

func DefaultAreaTable() (model.AreaTable, error) {
	return ParseAreaTable(defaultAreasJSON)
}

func ParseAreaTable(raw []byte) (model.AreaTable, error) {
	var inputs []areaSeed
	if err := json.Unmarshal(raw, &inputs); err != nil {
		return model.AreaTable{}, fmt.Errorf("decode area table: %w", err)
	}

	records := make([]model.AreaRecord, 0, len(inputs))
	for i, in := range inputs {
		name := strings.TrimSpace(in.AreaName)
		district := strings.TrimSpace(in.District)
		if name == "" || district == "" {
			return model.AreaTable{}, fmt.Errorf("area table row %d: area_name and district are required", i)
		}
		class, err := model.ParseAreaClass(in.Class)
		if err != nil {
			return model.AreaTable{}, fmt.Errorf("area table row %d: %w", i, err)
		}
		records = append(records, model.AreaRecord{AreaName: name, District: district, Class: class})
	}

	log.Printf("✅ Area table loaded: %d rows", len(records))
	return model.NewAreaTable(records), nil
}
