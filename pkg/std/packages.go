package std

import "strings"

// StandardPackages lists the root module names treated as the Python
// standard library.
var StandardPackages = map[string]bool{
	"BaseHTTPServer":     true,
	"ConfigParser":       true,
	"Cookie":             true,
	"EasyDialogs":        true,
	"Queue":              true,
	"SimpleXMLRPCServer": true,
	"SocketServer":       true,
	"StringIO":           true,
	"__builtin__":        true,
	"abc":                true,
	"anydbm":             true,
	"argparse":           true,
	"array":              true,
	"asynchat":           true,
	"asyncore":           true,
	"atexit":             true,
	"base64":             true,
	"bisect":             true,
	"builtins":           true,
	"bz2":                true,
	"cPickle":            true,
	"cProfile":           true,
	"cStringIO":          true,
	"calendar":           true,
	"cgitb":              true,
	"cmd":                true,
	"codecs":             true,
	"collections":        true,
	"commands":           true,
	"compileall":         true,
	"contextlib":         true,
	"copy":               true,
	"csv":                true,
	"datetime":           true,
	"dbhash":             true,
	"dbm":                true,
	"decimal":            true,
	"difflib":            true,
	"dircache":           true,
	"dis":                true,
	"doctest":            true,
	"dumbdbm":            true,
	"errno":              true,
	"exceptions":         true,
	"filecmp":            true,
	"fileinput":          true,
	"fnmatch":            true,
	"fractions":          true,
	"functools":          true,
	"gc":                 true,
	"gdbm":               true,
	"getopt":             true,
	"getpass":            true,
	"gettext":            true,
	"glob":               true,
	"grp":                true,
	"gzip":               true,
	"hashlib":            true,
	"heapq":              true,
	"hmac":               true,
	"imaplib":            true,
	"imp":                true,
	"inspect":            true,
	"itertools":          true,
	"json":               true,
	"linecache":          true,
	"locale":             true,
	"logging":            true,
	"mailbox":            true,
	"math":               true,
	"mhlib":              true,
	"mmap":               true,
	"multiprocessing":    true,
	"operator":           true,
	"optparse":           true,
	"os":                 true,
	"pdb":                true,
	"pickle":             true,
	"pipes":              true,
	"pkgutil":            true,
	"platform":           true,
	"plistlib":           true,
	"pprint":             true,
	"profile":            true,
	"pstats":             true,
	"pwd":                true,
	"pyclbr":             true,
	"pydoc":              true,
	"random":             true,
	"re":                 true,
	"readline":           true,
	"resource":           true,
	"rlcompleter":        true,
	"robotparser":        true,
	"sched":              true,
	"select":             true,
	"shelve":             true,
	"shlex":              true,
	"shutil":             true,
	"signal":             true,
	"site":               true,
	"sitecustomize":      true,
	"smtpd":              true,
	"smtplib":            true,
	"socket":             true,
	"sqlite3":            true,
	"string":             true,
	"struct":             true,
	"subprocess":         true,
	"sys":                true,
	"sysconfig":          true,
	"tabnanny":           true,
	"tarfile":            true,
	"tempfile":           true,
	"textwrap":           true,
	"threading":          true,
	"time":               true,
	"timeit":             true,
	"trace":              true,
	"traceback":          true,
	"unittest":           true,
	"urllib":             true,
	"urllib2":            true,
	"urlparse":           true,
	"usercustomize":      true,
	"uuid":               true,
	"warnings":           true,
	"weakref":            true,
	"webbrowser":         true,
	"whichdb":            true,
	"xml":                true,
	"xmlrpclib":          true,
	"zipfile":            true,
	"zipimport":          true,
	"zlib":               true,
}

// RootModule returns the part of a dotted module path before the first dot.
func RootModule(modulePath string) string {
	root, _, _ := strings.Cut(modulePath, ".")
	return root
}

// IsStandardPackage reports whether the root module of modulePath is a
// standard library module. Matching is exact and case-sensitive.
func IsStandardPackage(modulePath string) bool {
	return StandardPackages[RootModule(modulePath)]
}

// Set is an immutable set of standard library root module names.
type Set struct {
	names map[string]bool
}

// NewSet returns StandardPackages extended with extra root names.
func NewSet(extra ...string) Set {
	names := make(map[string]bool, len(StandardPackages)+len(extra))
	for name := range StandardPackages {
		names[name] = true
	}
	for _, name := range extra {
		if name = strings.TrimSpace(name); name != "" {
			names[name] = true
		}
	}
	return Set{names: names}
}

// Contains reports whether the root module of modulePath is in the set.
func (s Set) Contains(modulePath string) bool {
	if s.names == nil {
		return IsStandardPackage(modulePath)
	}
	return s.names[RootModule(modulePath)]
}

// Len returns the number of root names in the set.
func (s Set) Len() int {
	if s.names == nil {
		return len(StandardPackages)
	}
	return len(s.names)
}
