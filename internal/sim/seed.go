package sim

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/portal/pkg/entities"
	"github.com/mesh-intelligence/portal/pkg/projection"
	"github.com/mesh-intelligence/portal/pkg/types"
)

// Seeded sample objects.
var (
	seedAnnID      = uuid.MustParse("6f1c0d2a-5b8e-4c3d-9a7f-1e2d3c4b5a61")
	seedBobID      = uuid.MustParse("6f1c0d2a-5b8e-4c3d-9a7f-1e2d3c4b5a62")
	seedIncidentID = uuid.MustParse("0d3e4b1c-7a52-4f0e-b4c7-6a2e8f1d9c30")
	seedOrderID    = uuid.MustParse("9a8b7c6d-1e2f-4a3b-8c9d-0e1f2a3b4c5d")
	seedAssetID    = uuid.MustParse("c1d2e3f4-a5b6-4c7d-8e9f-0a1b2c3d4e5f")

	seedPOStandard = uuid.MustParse("1d4c6b2a-8e3f-4a5b-9c7d-2e1f0a3b4c5d")
	seedPOBlanket  = uuid.MustParse("2e5d7c3b-9f40-4b6c-ad8e-3f201b4c5d6e")
)

type seedEnum struct {
	id, parent uuid.UUID
	text, name string
	ordinal    int
}

func seedEnums() []seedEnum {
	member := func(e types.EnumValue, parent uuid.UUID, ordinal int) seedEnum {
		return seedEnum{e.ID, parent, e.DisplayText, e.Name, ordinal}
	}
	return []seedEnum{
		member(entities.StatusActive, entities.ObjectStatusListID, 0),
		member(entities.StatusPendingDelete, entities.ObjectStatusListID, 1),
		member(entities.StatusDeleted, entities.ObjectStatusListID, 2),
		member(entities.IncidentActive, entities.IncidentStatusListID, 0),
		member(entities.IncidentPending, entities.IncidentActive.ID, 0),
		member(entities.IncidentResolved, entities.IncidentStatusListID, 1),
		member(entities.IncidentClosed, entities.IncidentStatusListID, 2),
		{seedPOStandard, entities.PurchaseOrderTypeListID, "Standard", "PurchaseOrderTypeEnum.Standard", 0},
		{seedPOBlanket, entities.PurchaseOrderTypeListID, "Blanket", "PurchaseOrderTypeEnum.Blanket", 1},
	}
}

type seedRow struct {
	id, class uuid.UUID
	name      string
	body      string
}

func seedTemplates() []seedRow {
	return []seedRow{
		{entities.IncidentTemplateID, entities.IncidentClassID, "Default Incident", fmt.Sprintf(
			`{"ClassTypeId":"%s","Id":"","Title":"","Description":"",`+
				`"Status":{"Id":"%s","Name":"Active"},"Urgency":{"Id":null,"Name":""},"Impact":{"Id":null,"Name":""},`+
				`"RequestedWorkItem":null,"AssignedWorkItem":null,"RelatesToConfigItem":[]}`,
			entities.IncidentClassID, entities.IncidentActive.ID)},
		{entities.PurchaseOrderTemplateID, entities.PurchaseOrderClassID, "Default Purchase Order", fmt.Sprintf(
			`{"ClassTypeId":"%s","PurchaseOrderNumber":"","PurchaseOrderType":{"Id":null,"Name":""},`+
				`"PurchaseOrderDate":null,"Amount":null}`,
			entities.PurchaseOrderClassID)},
	}
}

func seedObjects() []seedRow {
	return []seedRow{
		{seedAnnID, entities.UserClassID, "", fmt.Sprintf(
			`{"BaseId":"%s","ClassTypeId":"%s","FullName":"System.Domain.User:CORP_asmith","DisplayName":"Ann Smith",`+
				`"FirstName":"Ann","LastName":"Smith","UserName":"asmith","Domain":"CORP","Email":"ann.smith@example.com"}`,
			seedAnnID, entities.UserClassID)},
		{seedBobID, entities.UserClassID, "", fmt.Sprintf(
			`{"BaseId":"%s","ClassTypeId":"%s","FullName":"System.Domain.User:CORP_bjones","DisplayName":"Bob Jones",`+
				`"FirstName":"Bob","LastName":"Jones","UserName":"bjones","Domain":"CORP","Email":"bob.jones@example.com"}`,
			seedBobID, entities.UserClassID)},
		{seedIncidentID, entities.IncidentClassID, "", fmt.Sprintf(
			`{"BaseId":"%s","ClassTypeId":"%s","FullName":"System.WorkItem.Incident:IR1","DisplayName":"IR1 - Printer jammed",`+
				`"Id":"IR1","Title":"Printer jammed","Description":"Third floor printer","CreatedDate":"2024-03-01T09:30:00Z",`+
				`"Status":{"Id":"%s","Name":"Active"},"Urgency":{"Id":null,"Name":""},"Impact":{"Id":null,"Name":""},`+
				`"RequestedWorkItem":{"BaseId":"%s","DisplayName":"Ann Smith"},"AssignedWorkItem":null,"RelatesToConfigItem":[]}`,
			seedIncidentID, entities.IncidentClassID, entities.IncidentActive.ID, seedAnnID)},
		{seedOrderID, entities.PurchaseOrderClassID, "", fmt.Sprintf(
			`{"BaseId":"%s","ClassTypeId":"%s","FullName":"Cireson.AssetManagement.PurchaseOrder:Testing123","DisplayName":"Testing123",`+
				`"PurchaseOrderNumber":"Testing123","PurchaseOrderType":{"Id":"%s","Name":"Standard"},`+
				`"PurchaseOrderDate":"2024-02-15T00:00:00Z","Amount":"1250.50"}`,
			seedOrderID, entities.PurchaseOrderClassID, seedPOStandard)},
		{seedAssetID, entities.HardwareAssetClassID, "", fmt.Sprintf(
			`{"BaseId":"%s","ClassTypeId":"%s","FullName":"Cireson.AssetManagement.HardwareAsset:AT-0001","DisplayName":"AT-0001",`+
				`"AssetTag":"AT-0001","SerialNumber":"5CG1234XYZ","Manufacturer":"HP","Model":"EliteBook 840","Cost":"899.99",`+
				`"ObjectStatus":{"Id":"%s","Name":"Active"},"Target_HardwareAssetHasPrimaryUser":{"BaseId":"%s","DisplayName":"Ann Smith"},`+
				`"Target_HardwareAssetHasPurchaseOrder":[{"BaseId":"%s","DisplayName":"Testing123"}]}`,
			seedAssetID, entities.HardwareAssetClassID, entities.StatusActive.ID, seedAnnID, seedOrderID)},
	}
}

// seedDefaults fills an empty store with the registered type projections,
// the well-known enumerations, templates and a handful of sample objects.
// It runs only when projections.jsonl was empty on startup.
func seedDefaults(db *sql.DB, dataDir string) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM projections").Scan(&count); err != nil {
		return fmt.Errorf("counting projections: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning seed transaction: %w", err)
	}
	defer tx.Rollback()

	for _, ti := range projection.Types() {
		if _, err := tx.Exec("INSERT INTO projections (projection_id, class_id, name) VALUES (?, ?, ?)",
			types.FormatD(ti.ProjectionID), types.FormatD(ti.ClassID), ti.Name); err != nil {
			return fmt.Errorf("seeding projection %s: %w", ti.Name, err)
		}
	}
	for _, e := range seedEnums() {
		if _, err := tx.Exec("INSERT INTO enums (enum_id, parent_id, text, name, ordinal) VALUES (?, ?, ?, ?, ?)",
			types.FormatD(e.id), types.FormatD(e.parent), e.text, e.name, e.ordinal); err != nil {
			return fmt.Errorf("seeding enumeration %s: %w", e.name, err)
		}
	}
	for _, r := range seedTemplates() {
		if _, err := tx.Exec("INSERT INTO templates (template_id, class_id, name, body) VALUES (?, ?, ?, ?)",
			types.FormatD(r.id), types.FormatD(r.class), r.name, r.body); err != nil {
			return fmt.Errorf("seeding template %s: %w", r.name, err)
		}
	}
	for _, r := range seedObjects() {
		if _, err := tx.Exec("INSERT INTO objects (base_id, class_id, body) VALUES (?, ?, ?)",
			types.FormatD(r.id), types.FormatD(r.class), r.body); err != nil {
			return fmt.Errorf("seeding object %s: %w", r.id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing seed transaction: %w", err)
	}

	for _, m := range jsonlTableMapping {
		if err := persistTable(db, dataDir, m.table); err != nil {
			return fmt.Errorf("persisting seeded %s: %w", m.table, err)
		}
	}
	return nil
}
