// compileinfoprint is blank-imported by the commands so that every run
// starts by reporting which build produced its output.
package compileinfoprint

import "github.com/carbocation/genetmap/compileinfo"

func init() {
	compileinfo.LogToStderr()
}
