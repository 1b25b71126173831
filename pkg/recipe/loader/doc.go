// Package loader parses deid recipe documents and resolves recipe
// identifiers for the recipe package.
//
// # Document Format
//
// Recipes are YAML (JSON is accepted as well):
//
//	format: dicom
//	values:
//	  whitelist: [CT, MR]
//	fields:
//	  patient_identifiers: [PatientName, PatientID]
//	filter:
//	  blacklist:
//	    - {field: Modality, operator: equals, value: SR}
//	header:
//	  - action: REMOVE
//	    field: PatientName
//	  - action: JITTER
//	    field: StudyDate
//	    options: {days: 7}
//
// Parsing fails fast: unknown sections, wrongly shaped sections, and header
// entries without an action or field are rejected with ErrCodeInvalidRecipe.
// A document that defines nothing parses to nil.
//
// # Sources
//
// Loader implements recipe.Resolver. Identifiers are tried in order:
//   - cm://namespace/name: ConfigMap key recipe.yaml, then deid, then the
//     only key
//   - http:// and https:// URLs
//   - glob patterns such as recipes/**/*.deid, combined in lexical order
//   - file paths
//   - built-in names: "dicom" reads deid.dicom.yaml from the data provider
//
// Missing ConfigMaps, 404 responses, missing files, and unknown built-ins
// resolve to nothing rather than an error.
//
// # Built-in Recipes
//
// Built-ins are embedded in the binary. LayeredDataProvider overlays an
// external directory whose files replace embedded files of the same name:
//
//	provider, err := loader.NewLayeredDataProvider(loader.DefaultDataProvider(),
//	    loader.LayeredProviderConfig{ExternalDir: "/etc/deid"})
//	if err != nil {
//	    return err
//	}
//	l := loader.New(loader.WithDataProvider(provider))
//
// # Validation
//
// Validate resolves many sources in parallel, bounded by
// defaults.ValidateConcurrency, and reports one result per source in input
// order.
package loader
