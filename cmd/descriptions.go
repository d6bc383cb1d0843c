package cmd

const rootLongDescription = `FlakeMonster surfaces hidden ordering assumptions in async JavaScript and
TypeScript by rewriting source files in place: it inserts deterministic,
seed-reproducible suspend-points between statements so that timing-dependent
bugs show up as test failures instead of production incidents.

Every inserted line carries a marker stamp, every run is recorded in a
manifest, and everything can be removed again, even after linters,
formatters or other tools have reshaped the injected code.`

const injectLongDescription = `Inject delays into every candidate file under the given path (default: the
enclosing project, found via package.json).

Each selected statement gets a marker comment and an awaited call into the
support module with the delay baked in as a literal. Delays derive purely
from the seed and the file/container/index context, so the same seed always
reproduces the same timing. Files that already carry the marker stamp are
left untouched.

Injection refuses to run while a manifest from a previous run is still
active; run restore first.`

const restoreLongDescription = `Remove injected delays and delete the support module and manifest.

With an active manifest, restoration covers exactly the recorded files and
verifies their post-injection hashes first; files modified since injection
are reported but still restored. Without a manifest, a recovery sweep scans
every candidate file and strips whatever the line classifier recognizes:
marker comments, suspend-calls (even ones reformatted across multiple
lines), and support module imports.`

const scanLongDescription = `Show exactly which lines a restore would delete, without modifying anything.

The scan is manifest-independent: it runs the same line classifier that
powers sweep recovery and reports each match with its file, 1-based line
number and the matching fragment (stamp, identifier or import).`

const listLongDescription = `List candidate source files together with the number of injection points the
configured mode and seed would produce. Nothing is written; this is a dry
run of the injection engine.`
