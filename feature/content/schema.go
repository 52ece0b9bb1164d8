package content

// Avro schemas for the two item datasets. The field sets mirror the staging
// CSV headers; TAGS is nullable and categorical.

const VideoSchemaJSON = `{
  "type": "record",
  "name": "Items",
  "namespace": "com.amazonaws.personalize.schema",
  "fields": [
    {"name": "ITEM_ID", "type": "string"},
    {"name": "CONTENT_TYPE", "type": "string"},
    {"name": "DESCRIPTION", "type": "string"},
    {"name": "DURATION", "type": "string"},
    {"name": "THUMB", "type": "string"},
    {"name": "NAME_TITLE", "type": "string"},
    {"name": "TAGS", "type": ["null", "string"], "categorical": true}
  ],
  "version": "1.0"
}`

const NewsSchemaJSON = `{
  "type": "record",
  "name": "Items",
  "namespace": "com.amazonaws.personalize.schema",
  "fields": [
    {"name": "ITEM_ID", "type": "string"},
    {"name": "CONTENT_TYPE", "type": "string"},
    {"name": "CHANNEL", "type": "string"},
    {"name": "PLACE", "type": "string"},
    {"name": "THUMB", "type": "string"},
    {"name": "NAME_TITLE", "type": "string"},
    {"name": "TAGS", "type": ["null", "string"], "categorical": true}
  ],
  "version": "1.0"
}`

// SchemaJSON returns the item schema for a domain.
func SchemaJSON(domain string) string {
	if domain == DomainNews {
		return NewsSchemaJSON
	}
	return VideoSchemaJSON
}

// Header returns the staging CSV header for a domain.
func Header(domain string) []string {
	if domain == DomainNews {
		return NewsHeader
	}
	return VideoHeader
}
