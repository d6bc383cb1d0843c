package model

// MarkerStamp is the globally unique fragment embedded in every injected
// comment. Recovery stays possible as long as any substring of it survives,
// and its presence anywhere in a file short-circuits re-injection.
const MarkerStamp = "@flakemonster"

// DelayIdentifier is the well-known name of the suspend primitive the
// injected code awaits.
const DelayIdentifier = "__flakeMonsterDelay"

// SupportFileName is the filename of the runtime support module copied into
// the project root. It is the third fragment the recovery classifier matches.
const SupportFileName = "__flakemonster.js"

// ManifestFileName is the well-known manifest path relative to the project
// root. The JSON document at this path is the entire durable state of a run.
const ManifestFileName = ".flakemonster-manifest.json"
