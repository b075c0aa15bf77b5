package sql

import (
	"embed"
)

// Migrations holds the schema DDL, applied in filename order.
//
//go:embed migrations/*.sql
var Migrations embed.FS

//go:embed queries/register_import.sql
var RegisterImport string

//go:embed queries/lookup_import.sql
var LookupImport string

//go:embed queries/reset_import.sql
var ResetImport string

//go:embed queries/update_import_status.sql
var UpdateImportStatus string

//go:embed queries/deactivate_imports.sql
var DeactivateImports string

//go:embed queries/activate_import.sql
var ActivateImport string

//go:embed queries/delete_import_rows.sql
var DeleteImportRows string

//go:embed queries/prune_imports.sql
var PruneImports string

//go:embed queries/load_active_catalog.sql
var LoadActiveCatalog string

//go:embed queries/active_import.sql
var ActiveImport string

//go:embed queries/analyze_rows.sql
var AnalyzeRows string
