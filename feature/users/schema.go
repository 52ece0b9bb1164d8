package users

// UserSchemaJSON is the Avro schema of the user datasets. The preference
// columns are nullable; FAV_DRIVERS doubles as a categorical feature.
const UserSchemaJSON = `{
  "type": "record",
  "name": "Users",
  "namespace": "com.amazonaws.personalize.schema",
  "fields": [
    {"name": "USER_ID", "type": "string"},
    {"name": "FAV_DRIVERS", "type": ["null", "string"], "categorical": true},
    {"name": "FAV_CARS", "type": ["null", "string"]},
    {"name": "FAV_CIRCUITS", "type": ["null", "string"]}
  ],
  "version": "1.0"
}`
