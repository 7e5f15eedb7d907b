package rpcclient

import (
	"github.com/forkscan/forkscand/logger"
)

var log = logger.RegisterSubSystem(logger.SubsystemTags.RPCC)
