package candidate

import "encoding/json"

// Schema is the JSON schema of a Candidate Batch, sent to the endpoint to
// constrain generation.
var Schema = json.RawMessage(`{
  "title": "RetroItemList",
  "type": "object",
  "properties": {
    "retro_items": {
      "title": "Retro Items",
      "type": "array",
      "items": {"$ref": "#/$defs/RetroItem"}
    }
  },
  "required": ["retro_items"],
  "$defs": {
    "RetroItem": {
      "title": "RetroItem",
      "type": "object",
      "properties": {
        "content": {"title": "Content", "type": "string"},
        "category": {"title": "Category", "type": "string"},
        "cluster_id": {
          "title": "Cluster Id",
          "anyOf": [{"type": "integer"}, {"type": "null"}],
          "default": null
        }
      },
      "required": ["content", "category"]
    }
  }
}`)
