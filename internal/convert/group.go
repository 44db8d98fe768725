package convert

import "github.com/goliatone/go-notion2wp/notion"

// Groupable reports whether consecutive blocks of blockType merge into a
// single list container.
func Groupable(blockType string) bool {
	switch blockType {
	case notion.TypeBulletedListItem, notion.TypeNumberedListItem, notion.TypeToDo:
		return true
	default:
		return false
	}
}

// Group merges runs of consecutive groupable siblings of the same type into
// one grouped block. Other blocks pass through in order. Children are not
// visited; they are grouped when converted.
func Group(blocks []notion.Block) []notion.Block {
	if len(blocks) == 0 {
		return nil
	}
	out := make([]notion.Block, 0, len(blocks))
	for i := 0; i < len(blocks); {
		block := blocks[i]
		if block.Grouped || !Groupable(block.Type) {
			out = append(out, block)
			i++
			continue
		}
		j := i + 1
		for j < len(blocks) && !blocks[j].Grouped && blocks[j].Type == block.Type {
			j++
		}
		members := make([]notion.Block, j-i)
		copy(members, blocks[i:j])
		out = append(out, notion.Block{
			ID:      block.ID,
			Type:    block.Type,
			Grouped: true,
			Members: members,
		})
		i = j
	}
	return out
}

// members returns the list items a list-like converter renders: the group
// members for grouped blocks, or the block itself.
func members(block notion.Block) []notion.Block {
	if block.Grouped {
		return block.Members
	}
	return []notion.Block{block}
}
