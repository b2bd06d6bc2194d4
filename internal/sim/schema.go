package sim

// Schema DDL. Record bodies are stored as JSON text exactly as committed so
// field order survives a round trip.
const (
	createProjections = `CREATE TABLE projections (
    projection_id TEXT PRIMARY KEY,
    class_id TEXT NOT NULL,
    name TEXT NOT NULL
);`

	createObjects = `CREATE TABLE objects (
    base_id TEXT PRIMARY KEY,
    class_id TEXT NOT NULL,
    body TEXT NOT NULL
);`

	createTemplates = `CREATE TABLE templates (
    template_id TEXT PRIMARY KEY,
    class_id TEXT NOT NULL,
    name TEXT NOT NULL,
    body TEXT NOT NULL
);`

	createEnums = `CREATE TABLE enums (
    enum_id TEXT PRIMARY KEY,
    parent_id TEXT NOT NULL,
    text TEXT NOT NULL,
    name TEXT NOT NULL,
    ordinal INTEGER NOT NULL DEFAULT 0
);`
)

const (
	idxObjectsClass  = `CREATE INDEX idx_objects_class ON objects(class_id);`
	idxEnumsParent   = `CREATE INDEX idx_enums_parent ON enums(parent_id);`
	idxTemplateClass = `CREATE INDEX idx_templates_class ON templates(class_id);`
)

var schemaDDL = []string{
	createProjections,
	createObjects,
	createTemplates,
	createEnums,
}

var indexDDL = []string{
	idxObjectsClass,
	idxEnumsParent,
	idxTemplateClass,
}
