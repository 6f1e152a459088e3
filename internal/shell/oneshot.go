package shell

import (
	"github.com/danmuck/wardenctl/internal/command"
	"github.com/danmuck/wardenctl/internal/protocol"
)

// OneShot sends exactly one command line through conn and returns the
// reply untouched. The descriptor set is fetched first so the same
// validation applies as in the interactive loop; introspection
// failures degrade to an unvalidated parse. The reply's verdict is the
// caller's to interpret.
func OneShot(conn Conn, line string) (protocol.CommandReply, error) {
	set := FetchDescriptors(conn)
	inv, err := command.Parse(line, set)
	if err != nil {
		return protocol.CommandReply{}, err
	}
	return conn.SendCommand(inv.Name, inv.Arguments)
}
