// Package shim holds the PHP snippet that dumps core_config_data from a
// Magento installation in the wire format, and helpers to invoke it.
package shim

import (
	"fmt"
	"strings"

	"github.com/scandiweb/configdiff/pkg/io/wire"
)

// DefaultPHP is the interpreter used when none is configured.
const DefaultPHP = "php"

// The script must not contain single quotes so it can be passed through a
// single-quoted shell argument unchanged. A value json_encode rejects, such as
// invalid UTF-8, aborts the dump with exit status 1.
var scriptLines = []string{
	`require_once "app/Mage.php";`,
	`Mage::app();`,
	fmt.Sprintf(`echo json_encode(array("format"=>"%s","version"=>%d)),"\n";`, wire.FormatName, wire.Version),
	`foreach (Mage::getModel("core/config_data")->getCollection()->setOrder("path","ASC") as $c) {`,
	`$r = json_encode(array($c->getScope()."_".$c->getScopeId(),(string)$c->getPath(),(string)$c->getValue()));`,
	`if ($r === false) { fwrite(STDERR, "cannot encode ".$c->getPath().": json error ".json_last_error()."\n"); exit(1); }`,
	`echo $r,"\n";`,
	`}`,
}

// Script returns the PHP code passed to `php -r`. It expects to run from the
// Magento root directory.
func Script() string {
	return strings.Join(scriptLines, " ")
}

// RemoteCommand returns the shell command that runs the script with php inside
// dir. The php value is inserted as-is so it may carry interpreter flags.
func RemoteCommand(dir, php string) string {
	if php == "" {
		php = DefaultPHP
	}

	return fmt.Sprintf("cd %s && %s -r %s", Quote(dir), php, Quote(Script()))
}

// Quote wraps s in single quotes for a POSIX shell.
func Quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
