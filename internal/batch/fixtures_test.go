package batch

const validDisplay = `<display typeId="org.csstudio.opibuilder.Display" version="1.0.0">
  <width>800</width>
  <height>600</height>
  <widget typeId="org.csstudio.opibuilder.widgets.Rectangle" version="1.0.0">
    <widget_type>Rectangle</widget_type>
    <x>10</x>
    <y>20</y>
    <width>30</width>
    <height>40</height>
    <background_color>
      <color red="0" green="0" blue="0" />
    </background_color>
  </widget>
  <widget typeId="org.csstudio.opibuilder.widgets.ActionButton" version="1.0.0">
    <widget_type>Action Button</widget_type>
    <x>0</x>
    <y>0</y>
    <width>10</width>
    <height>10</height>
  </widget>
</display>
`

const malformedDisplay = `<display typeId="org.csstudio.opibuilder.Display" version="1.0.0">
  <width>800</width>
  <height>600</height>
  <widget typeId="org.csstudio.opibuilder.widgets.Rectangle" version="1.0.0">
    <widget_type>Rectangle</widget_type>
</display>
`
